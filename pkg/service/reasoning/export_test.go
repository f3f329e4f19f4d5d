package reasoning

// BuildUserPrompt is exported for testing
var BuildUserPrompt = buildUserPrompt

// ResponseSchema is exported for testing
var ResponseSchema = responseSchema
