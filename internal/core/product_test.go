package core

import (
	"encoding/json"
	"testing"
)

func TestProduct_LenientDecoding(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantPrice    Price
		wantCategory string
		wantCatID    int
	}{
		{
			name:         "well formed",
			body:         `{"id":1,"title":"A","price":12.5,"category":{"id":2,"name":"Clothes"},"images":[]}`,
			wantPrice:    12.5,
			wantCategory: "Clothes",
			wantCatID:    2,
		},
		{
			name:      "price as string",
			body:      `{"id":1,"title":"A","price":"7.25"}`,
			wantPrice: 7.25,
		},
		{
			name:      "price null",
			body:      `{"id":1,"title":"A","price":null}`,
			wantPrice: 0,
		},
		{
			name:      "price garbage",
			body:      `{"id":1,"title":"A","price":"n/a"}`,
			wantPrice: 0,
		},
		{
			name:         "category as name",
			body:         `{"id":1,"title":"A","price":1,"category":"Shoes"}`,
			wantPrice:    1,
			wantCategory: "Shoes",
		},
		{
			name:      "category as id",
			body:      `{"id":1,"title":"A","price":1,"category":5}`,
			wantPrice: 1,
			wantCatID: 5,
		},
		{
			name:      "category id as string",
			body:      `{"id":1,"title":"A","price":1,"category":{"id":"6","name":""}}`,
			wantPrice: 1,
			wantCatID: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Product
			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if p.Price != tt.wantPrice {
				t.Errorf("Price = %v, want %v", p.Price, tt.wantPrice)
			}
			if p.CategoryName() != tt.wantCategory {
				t.Errorf("CategoryName() = %q, want %q", p.CategoryName(), tt.wantCategory)
			}
			if p.CategoryID() != tt.wantCatID {
				t.Errorf("CategoryID() = %d, want %d", p.CategoryID(), tt.wantCatID)
			}
		})
	}
}

func TestPrice_String(t *testing.T) {
	tests := []struct {
		in   Price
		want string
	}{
		{12, "12"},
		{12.5, "12.5"},
		{0, "0"},
		{0.1, "0.1"},
	}

	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("Price(%v).String() = %q, want %q", float64(tt.in), got, tt.want)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"3", 3},
		{" 4.5 ", 4.5},
		{"", 0},
		{"abc", 0},
		{"-2", -2},
	}

	for _, tt := range tests {
		if got := ParseNumber(tt.in); got != tt.want {
			t.Errorf("ParseNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
