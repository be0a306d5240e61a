package entity

import (
	"time"
)

// User mirrors the auth provider account. The document ID is the uid.
type User struct {
	ID          string    `json:"uid" firestore:"uid"`
	DisplayName string    `json:"displayName" firestore:"displayName"`
	Email       string    `json:"email" firestore:"email"`
	Provider    string    `json:"provider" firestore:"provider"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	Wishlist    []string  `json:"wishlist" firestore:"wishlist"`
}

// Identity is what the auth layer knows about the caller.
type Identity struct {
	UID         string
	DisplayName string
	Email       string
	Provider    string
}
