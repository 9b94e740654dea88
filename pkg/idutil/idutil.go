package idutil

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	once sync.Once
	node *snowflake.Node
)

// Init sets the snowflake node id used for id generation. It must be called
// once at process start, before the first NextID.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})

	return err
}

// NextID generates a time-ordered int64 id. It is safe for concurrent use.
func NextID() int64 {
	if node == nil {
		if err := Init(0); err != nil {
			panic(err)
		}
	}

	return node.Generate().Int64()
}
