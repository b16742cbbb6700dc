package workflow

const (
	operationCreate    = "create"
	operationConfigure = "configure"
	operationDraft     = "draft"

	outcomeSuccess = "success"
	outcomeFailure = "failure"
)
