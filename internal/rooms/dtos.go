package rooms

// RoomListQuery carries pagination and filters for the room catalog
type RoomListQuery struct {
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
	Building    string `form:"building"`
	MinCapacity int    `form:"min_capacity"`
}

type RoomListResponse struct {
	Rooms      []Room `json:"rooms"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalCount int64  `json:"total_count"`
}
