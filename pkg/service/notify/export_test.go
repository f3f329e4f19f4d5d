package notify

// BuildSubject is exported for testing
var BuildSubject = buildSubject

// BuildBody is exported for testing
var BuildBody = buildBody

// FanOut is exported for testing
var FanOut = fanOut
