package models

// Cabin is a lodging unit guests stay in.
type Cabin struct {
	ID       string `bson:"_id" json:"id" firestore:"-"`
	Name     string `bson:"name" json:"name" firestore:"name"`
	Capacity int    `bson:"capacity" json:"capacity" firestore:"capacity"`
	Posicao  int    `bson:"posicao" json:"posicao" firestore:"posicao"`
}
