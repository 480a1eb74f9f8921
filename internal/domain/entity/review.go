package entity

import "time"

// Review reseña de un producto por un usuario. Rating en el rango 1..5.
type Review struct {
	ID         string
	UserID     string
	ProductID  string
	Rating     int
	Comment    string
	ReviewDate time.Time
}
