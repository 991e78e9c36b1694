// Package domain defines the minutes document types shared across services
package domain

// Raw is a stored minutes row as imported; Minutes may be Mac Roman
type Raw struct {
	ID       int64
	Name     string
	Location string
	Date     string
	Minutes  []byte
}

// Document is a minutes record with normalized text, ready for the scanner
type Document struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Text     string `json:"text"`
}

// Summary lists a document without its text
type Summary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Date     string `json:"date"`
}
