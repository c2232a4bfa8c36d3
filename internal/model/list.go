package model

// ListEntry identifies a movie inside a user's favorites or watch-later
// list. Source distinguishes locally curated ids from TMDb ids.
type ListEntry struct {
	ID     string `json:"id" bson:"id"`
	Source string `json:"source" bson:"source"`
}
