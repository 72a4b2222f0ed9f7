package model

import (
	"time"
)

const (
	BookTitleMaxLength       = 200
	BookAuthorMaxLength      = 100
	BookDescriptionMaxLength = 1000
)

type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
