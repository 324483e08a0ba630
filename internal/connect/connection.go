package connect

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// State mirrors the connection lifecycle of the MongoDB client.
type State int

const (
	Disconnected State = iota
	Connected
	Connecting
	Disconnecting
)

func (s State) String() string {
	switch s {
	case Connected:
		return "connected"
	case Connecting:
		return "connecting"
	case Disconnecting:
		return "disconnecting"
	default:
		return "disconnected"
	}
}

// Mongo owns the shared client and its current state. Handlers consult the
// state through the repository before touching the store.
type Mongo struct {
	mu     sync.RWMutex
	client *mongo.Client
	state  State
}

func (m *Mongo) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *Mongo) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Mongo) Client() *mongo.Client {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.client
}

func MongoDBConnect(uri string) (*Mongo, error) {
	m := &Mongo{state: Connecting}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		m.setState(Disconnected)
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		m.setState(Disconnected)
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	m.mu.Lock()
	m.client = client
	m.state = Connected
	m.mu.Unlock()
	return m, nil
}

func (m *Mongo) Disconnect() error {
	m.mu.Lock()
	client := m.client
	if client == nil {
		m.state = Disconnected
		m.mu.Unlock()
		return nil
	}
	m.state = Disconnecting
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := client.Disconnect(ctx)

	m.mu.Lock()
	m.client = nil
	m.state = Disconnected
	m.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to disconnect MongoDB: %v", err)
	}
	return nil
}
