package domain

import "time"

// InstallRecord tracks a file copied into a packaged application tree.
type InstallRecord struct {
	Dest      string    `json:"dest"`
	Source    string    `json:"source,omitzero"`
	Digest    string    `json:"digest,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}
