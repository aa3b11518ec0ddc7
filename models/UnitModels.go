package models

type Unit struct {
	ID          uint   `json:"id" example:"1"`
	UnitName    string `json:"unit_name" binding:"required" example:"Cum"`
	Description string `json:"description" example:"Cubic metre"`
}

func (u Unit) ToGorm() UnitGorm {
	return UnitGorm{ID: u.ID, UnitName: u.UnitName, Description: u.Description}
}

func UnitFromGorm(g UnitGorm) Unit {
	return Unit{ID: g.ID, UnitName: g.UnitName, Description: g.Description}
}
