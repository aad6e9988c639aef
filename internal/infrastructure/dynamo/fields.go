package dynamo

// DynamoDB attribute names used in update expressions inside the repos.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldEnable   = "enable"
	fieldConsumed = "consumed"
)
