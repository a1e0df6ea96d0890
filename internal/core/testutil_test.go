package core

import "strconv"

// products builds records with sequential ids from title/price pairs.
func products(pairs ...any) []Product {
	out := make([]Product, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Product{
			ID:    len(out) + 1,
			Title: pairs[i].(string),
			Price: Price(pairs[i+1].(float64)),
		})
	}
	return out
}

// numbered builds n records titled "Product 1".."Product n" priced 1..n.
func numbered(n int) []Product {
	out := make([]Product, n)
	for i := range out {
		out[i] = Product{ID: i + 1, Title: "Product " + strconv.Itoa(i+1), Price: Price(i + 1)}
	}
	return out
}

func ids(ps []Product) []int {
	out := make([]int, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}
