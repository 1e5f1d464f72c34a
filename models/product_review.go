package models

import "github.com/google/uuid"

// ProductReview is a customer rating of a product. Anonymous reviewers fill
// in name/email; logged-in reviewers are limited to one review per product.
type ProductReview struct {
	Timestamped
	ProductID uuid.UUID  `json:"product_id" db:"product_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_product_review_unique"`
	UserID    *uuid.UUID `json:"user_id,omitempty" db:"user_id" gorm:"type:uuid;uniqueIndex:idx_product_review_unique"`

	Rating  int    `json:"rating" db:"rating" gorm:"not null"`
	Title   string `json:"title,omitempty" db:"title" gorm:"type:text"`
	Comment string `json:"comment" db:"comment" gorm:"type:text;not null"`

	ReviewerName  string `json:"reviewer_name,omitempty" db:"reviewer_name" gorm:"type:text"`
	ReviewerEmail string `json:"reviewer_email,omitempty" db:"reviewer_email" gorm:"type:text"`

	IsApproved         bool `json:"is_approved" db:"is_approved" gorm:"not null;default:false"`
	IsVerifiedPurchase bool `json:"is_verified_purchase" db:"is_verified_purchase" gorm:"not null;default:false"`

	HelpfulYes int `json:"helpful_yes" db:"helpful_yes" gorm:"not null;default:0"`
	HelpfulNo  int `json:"helpful_no" db:"helpful_no" gorm:"not null;default:0"`

	Product Product `json:"-" gorm:"foreignKey:ProductID;references:ID"`
}

// HelpfulScore is the percentage of "yes" votes.
func (r ProductReview) HelpfulScore() float64 {
	total := r.HelpfulYes + r.HelpfulNo
	if total == 0 {
		return 0
	}
	return float64(r.HelpfulYes) / float64(total) * 100
}

// ValidRating reports whether the rating sits in the 1..5 star range.
func ValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}
