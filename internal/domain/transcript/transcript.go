package transcript

import "time"

// Transcript is a stored game record together with the outcome of parsing it.
type Transcript struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	PlyCount  int       `json:"ply_count" bson:"ply_count"`
	Failed    bool      `json:"failed" bson:"failed"`
	Error     string    `json:"error,omitempty" bson:"error,omitempty"`
}

type CreateTranscriptRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type ParseRequest struct {
	Text string `json:"text"`
}

type TranscriptCreateResponse struct {
	ID     string      `json:"id"`
	Replay *ReplayView `json:"replay"`
}

type TranscriptListResponse struct {
	PageNum     int          `json:"page_num"`
	Transcripts []Transcript `json:"transcripts"`
}
