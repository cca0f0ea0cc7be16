package db_models

// TravelPlan records one planning outcome. Request and result are kept as
// JSON text so a stored plan can be replayed without the model.
type TravelPlan struct {
	BaseModel
	Destination  string `gorm:"index"`
	Duration     int
	Variant      string
	Source       string // "llm" | "demo"
	Strategy     string
	Notice       string
	RequestJSON  string `gorm:"type:text"`
	ResultJSON   string `gorm:"type:text"`
	RawResponse  string `gorm:"type:text"`
	ErrorMessage string
}
