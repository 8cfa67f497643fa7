package model

import "time"

// Judge score bounds. Both sub-scores are integers on a closed 0–10 scale.
const (
	MinJudgeScore = 0
	MaxJudgeScore = 10
)

// JudgeScore is one judge's rating of one video. At most one row exists per
// (video, judge); a judge revises by update, never by a second row.
type JudgeScore struct {
	VideoID    string    `json:"videoId"`
	JudgeID    string    `json:"judgeId"`
	Creativity int       `json:"creativity"`
	Quality    int       `json:"quality"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// JudgeScoreRequest is the API request body for submitting or revising a score.
type JudgeScoreRequest struct {
	VideoID    string `json:"videoId"`
	JudgeID    string `json:"judgeId"`
	Creativity int    `json:"creativity"`
	Quality    int    `json:"quality"`
}

// JudgeScoreResponse reports the stored score and whether it replaced an
// earlier one from the same judge.
type JudgeScoreResponse struct {
	Success    bool   `json:"success"`
	VideoID    string `json:"videoId"`
	JudgeID    string `json:"judgeId"`
	Creativity int    `json:"creativity"`
	Quality    int    `json:"quality"`
	Updated    bool   `json:"updated"`
}
