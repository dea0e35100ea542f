package catalog

type CreateRoomRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=255"`
	Capacity int    `json:"capacity" validate:"required,gte=1"`
}

type UpdateRoomRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=255"`
	Capacity int    `json:"capacity" validate:"required,gte=1"`
}
