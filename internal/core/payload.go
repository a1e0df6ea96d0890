package core

import (
	"strconv"
	"strings"
)

// DefaultCategoryID is used for new products whose category field is blank or invalid.
const DefaultCategoryID = 1

// Payload is the body sent to create or update a product.
// CategoryID is omitted from the JSON body when zero.
type Payload struct {
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	CategoryID  int      `json:"categoryId,omitempty"`
	Images      []string `json:"images"`
}

// PayloadForm is the raw text a user typed into a create or edit form.
type PayloadForm struct {
	Title       string
	Price       string
	Description string
	CategoryID  string
	Images      string // comma separated URLs
}

// CreatePayload normalizes form for a create call. Invalid input is never
// rejected: a bad price becomes 0 and a bad category becomes DefaultCategoryID.
func (f PayloadForm) CreatePayload() Payload {
	p := f.payload()
	if p.CategoryID == 0 {
		p.CategoryID = DefaultCategoryID
	}
	return p
}

// UpdatePayload normalizes form for an update call. A bad category is left out
// of the body so the product keeps its current one.
func (f PayloadForm) UpdatePayload() Payload {
	return f.payload()
}

func (f PayloadForm) payload() Payload {
	return Payload{
		Title:       f.Title,
		Price:       ParseNumber(f.Price),
		Description: f.Description,
		CategoryID:  int(ParseNumber(f.CategoryID)),
		Images:      SplitImages(f.Images),
	}
}

// FormFromProduct fills an edit form from an existing product.
func FormFromProduct(p Product) PayloadForm {
	form := PayloadForm{
		Title:       p.Title,
		Price:       p.Price.String(),
		Description: p.Description,
		Images:      strings.Join(p.Images, ","),
	}
	if id := p.CategoryID(); id != 0 {
		form.CategoryID = strconv.Itoa(id)
	}
	return form
}

// SplitImages splits a comma separated URL list, trimming entries and dropping blanks.
func SplitImages(s string) []string {
	images := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			images = append(images, part)
		}
	}
	return images
}
