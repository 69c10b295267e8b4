package model

// Gid identifies a group.
type Gid uint16

type Group struct {
	Gid         Gid    `json:"gid"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Members     []Uid  `json:"uids"`
}

func (g Group) HasMember(uid Uid) bool {
	for _, m := range g.Members {
		if m == uid {
			return true
		}
	}
	return false
}
