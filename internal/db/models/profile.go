package models

type Profile struct {
	ID     int64  `json:"id" pg:",pk"`
	UserID int64  `json:"user_id" pg:",notnull,unique"`
	Avatar string `json:"avatar"`
}

func (p *Profile) HasAvatar() bool {
	return p != nil && p.Avatar != ""
}
