package model

// SocialPost is one synthetic social media post, as stored in the raw JSON file.
type SocialPost struct {
	PostID     string `json:"post_id" csv:"post_id"`
	UserHandle string `json:"user_handle" csv:"user_handle"`
	Timestamp  string `json:"timestamp" csv:"timestamp"`
	Content    string `json:"content" csv:"content"`
	Likes      int    `json:"likes" csv:"likes"`
	Shares     int    `json:"shares" csv:"shares"`
	Comments   int    `json:"comments" csv:"comments"`
	Sentiment  string `json:"sentiment" csv:"sentiment"`
	Category   string `json:"category" csv:"category"`
	Platform   string `json:"platform" csv:"platform"`
}

// ProcessedSocialPost is a social post with derived engagement/sentiment scores.
type ProcessedSocialPost struct {
	SocialPost
	Date            string `csv:"date" json:"date"`
	Hour            int    `csv:"hour" json:"hour"`
	EngagementScore int    `csv:"engagement_score" json:"engagement_score"`
	SentimentScore  int    `csv:"sentiment_score" json:"sentiment_score"`
}

// EngagementScore weights shares and comments above likes as a proxy for
// post popularity: likes + 2*shares + 3*comments.
func EngagementScore(likes, shares, comments int) int {
	return likes + 2*shares + 3*comments
}

// SentimentScore maps a sentiment label to a numeric score.
// Unknown labels score 0, same as neutral.
func SentimentScore(sentiment string) int {
	switch sentiment {
	case "positive":
		return 1
	case "negative":
		return -1
	default:
		return 0
	}
}
