package seats

// SeedResult reports the outcome of seeding the default seat grid
type SeedResult struct {
	InsertedCount int   `json:"inserted_count"`
	TotalSeats    int64 `json:"total_seats"`
}
