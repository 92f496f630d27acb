package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ObjectID is the opaque store id of a document. It decodes from either a
// BSON ObjectID (hex form) or a plain string id.
//
//nolint:recvcheck // use pointer receiver to match bson.UnmarshalValue
type ObjectID string

func (o ObjectID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	p, err := primitive.ObjectIDFromHex(string(o))
	if err != nil {
		return bson.MarshalValue(string(o))
	}
	return bson.MarshalValue(p)
}

func (o *ObjectID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bson.TypeObjectID:
		var p primitive.ObjectID
		if err := bson.UnmarshalValue(t, data, &p); err != nil {
			return err
		}
		*o = ObjectID(p.Hex())
	case bson.TypeString:
		var s string
		if err := bson.UnmarshalValue(t, data, &s); err != nil {
			return err
		}
		*o = ObjectID(s)
	default:
		return fmt.Errorf("unsupported id type %s", t)
	}
	return nil
}

func (o ObjectID) String() string {
	return string(o)
}
