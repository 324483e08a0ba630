package models

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/joshua-takyi/carrental/internal/connect"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate = validator.New()

// Sentinel errors surfaced by the persistence layer. Handlers map these to
// HTTP status codes at the boundary.
var (
	ErrNotConnected = errors.New("database not connected")
	ErrDuplicateKey = errors.New("duplicate booking id")
	ErrValidation   = errors.New("validation failed")
)

type MongodbRepo struct {
	conn *connect.Mongo
}

func MongodbNewRepo(conn *connect.Mongo) *MongodbRepo {
	return &MongodbRepo{
		conn: conn,
	}
}

func (mdb *MongodbRepo) State() connect.State {
	if mdb.conn == nil {
		return connect.Disconnected
	}
	return mdb.conn.State()
}

// GetCollection fails fast when the shared connection is not in the
// connected state, so no operation ever races a dead client.
func (mdb *MongodbRepo) GetCollection(dbName, colName string) (*mongo.Collection, error) {
	if mdb.State() != connect.Connected {
		return nil, ErrNotConnected
	}
	return mdb.conn.Client().Database(dbName).Collection(colName), nil
}
