package domain

type Highlights struct {
	KeyInsight string `json:"keyInsight"`
	ActionItem string `json:"actionItem"`
	Resource   string `json:"resource"`
}
