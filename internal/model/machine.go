package model

// Machine は重機マスタの 1 行。HourlyRate は円/時。
type Machine struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	HourlyRate int    `json:"hourly_rate" yaml:"hourly_rate"`
}
