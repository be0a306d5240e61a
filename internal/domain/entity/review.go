package entity

import (
	"time"
)

const (
	ReviewMinLength = 10
	ReviewMaxLength = 1000
	ReviewMaxTags   = 5
)

// ReviewTags are the suggested tag choices offered with the review form.
var ReviewTags = []string{
	"힐링", "가족여행", "뷰맛집", "액티비티", "데이트", "혼행",
	"사진맛집", "인스타", "자연", "도시", "전통", "현대",
	"조용함", "활기참", "저렴함", "고급스러움",
}

// Review is immutable once written.
type Review struct {
	ID        string    `json:"id" firestore:"-"`
	PlaceID   string    `json:"placeId" firestore:"placeId"`
	Content   string    `json:"content" firestore:"content"`
	UserTags  []string  `json:"userTags" firestore:"userTags"`
	UserID    string    `json:"userId" firestore:"userId"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}
