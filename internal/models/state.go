package models

type Stage string

const (
	StageReceived  Stage = "RECEIVED"
	StageLoaded    Stage = "LOADED"
	StageDescribed Stage = "DESCRIBED"
	StagePrompted  Stage = "PROMPTED"
	StageCompleted Stage = "COMPLETED"
	StageExtracted Stage = "EXTRACTED"
	StageReparsed  Stage = "REPARSED"
	StageConformed Stage = "CONFORMED"
	StageResponded Stage = "RESPONDED"
	StageFailed    Stage = "FAILED"
)

// Stage names used when tagging errors.
const (
	OpRequest  = "request"
	OpLoad     = "load"
	OpDescribe = "describe"
	OpPrompt   = "prompt"
	OpComplete = "complete"
	OpExtract  = "extract"
	OpReparse  = "reparse"
	OpConform  = "conform"
)
