package core

import (
	"encoding/json"
	"slices"
	"strings"
	"testing"
)

func TestCreatePayload(t *testing.T) {
	tests := []struct {
		name         string
		form         PayloadForm
		wantPrice    float64
		wantCategory int
	}{
		{"valid input", PayloadForm{Title: "Hat", Price: "12.5", CategoryID: "3"}, 12.5, 3},
		{"bad price becomes zero", PayloadForm{Title: "Hat", Price: "cheap", CategoryID: "3"}, 0, 3},
		{"blank category defaults", PayloadForm{Title: "Hat", Price: "1"}, 1, DefaultCategoryID},
		{"bad category defaults", PayloadForm{Title: "Hat", Price: "1", CategoryID: "shoes"}, 1, DefaultCategoryID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.form.CreatePayload()
			if p.Price != tt.wantPrice {
				t.Errorf("Price = %v, want %v", p.Price, tt.wantPrice)
			}
			if p.CategoryID != tt.wantCategory {
				t.Errorf("CategoryID = %d, want %d", p.CategoryID, tt.wantCategory)
			}
		})
	}
}

func TestUpdatePayload_OmitsInvalidCategory(t *testing.T) {
	p := PayloadForm{Title: "Hat", Price: "4", CategoryID: "nope"}.UpdatePayload()
	if p.CategoryID != 0 {
		t.Fatalf("CategoryID = %d, want 0", p.CategoryID)
	}

	body, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(body), "categoryId") {
		t.Errorf("update body should omit categoryId: %s", body)
	}
	if !strings.Contains(string(body), `"images":[]`) {
		t.Errorf("update body should send an empty images list: %s", body)
	}
}

func TestSplitImages(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"a", []string{"a"}},
		{" a , b ,, c ", []string{"a", "b", "c"}},
		{" , ", []string{}},
	}

	for _, tt := range tests {
		got := SplitImages(tt.in)
		if got == nil {
			t.Errorf("SplitImages(%q) returned nil", tt.in)
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("SplitImages(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormFromProduct(t *testing.T) {
	p := Product{
		ID:          9,
		Title:       "Lamp",
		Price:       19.99,
		Description: "Bright",
		Category:    &Category{ID: 4, Name: "Home"},
		Images:      []string{"u1", "u2"},
	}

	form := FormFromProduct(p)
	want := PayloadForm{Title: "Lamp", Price: "19.99", Description: "Bright", CategoryID: "4", Images: "u1,u2"}
	if form != want {
		t.Errorf("FormFromProduct() = %+v, want %+v", form, want)
	}

	if got := FormFromProduct(Product{Title: "x"}).CategoryID; got != "" {
		t.Errorf("CategoryID without category = %q, want empty", got)
	}
}
