package upload

// Candidate is a user-selected file waiting to be validated and uploaded.
// It only lives for the duration of a single submission.
type Candidate struct {
	Filename string
	Size     int64
	Data     []byte
}
