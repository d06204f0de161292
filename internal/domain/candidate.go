package domain

import "github.com/shopspring/decimal"

// Ключи payload товара в векторном индексе
const (
	PayloadProductID    = "product_id"
	PayloadName         = "name"
	PayloadDescription  = "description"
	PayloadPrice        = "price"
	PayloadCategory     = "category"
	PayloadImageURL     = "image_url"
	PayloadImgURL       = "img_url"
	PayloadGCPPublicURL = "gcp_public_url"
	PayloadGCPImageURL  = "gcp_image_url"
	PayloadGCPBucket    = "gcp_bucket"
	PayloadGCPPath      = "gcp_path"
)

// ScoredMatch — сырой результат поиска ближайших соседей
type ScoredMatch struct {
	ID      string
	Score   float32
	Payload Payload
}

// Candidate — найденный товар, прошедший порог схожести
type Candidate struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Similarity  float32
	Metadata    Payload
}

func NewCandidate(match ScoredMatch) Candidate {
	return Candidate{
		ID:          match.ID,
		Name:        match.Payload.String(PayloadName),
		Description: match.Payload.String(PayloadDescription),
		Price:       match.Payload.Decimal(PayloadPrice),
		Similarity:  match.Score,
		Metadata:    match.Payload,
	}
}
