package dto

type SlotDTO struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Status string `json:"status"`
}
