package domain

type Experience struct {
	Year        string `json:"year"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
}
