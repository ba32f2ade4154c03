package model

type Section struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	AuthorID string `db:"author_id" json:"authorId"`
	Public   bool   `db:"public" json:"public"`
}

type SectionPatch struct {
	Name   *string `json:"name"`
	Public *bool   `json:"public"`
}
