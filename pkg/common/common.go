package common

import (
	"os"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cast"
)

const (
	NA       = "N/A"
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	nodeID := cast.ToInt64(os.Getenv("TOUGHSTORE_NODE_ID")) % 1024
	if nodeID < 0 {
		nodeID = -nodeID
	}
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		node, _ = snowflake.NewNode(0)
	}
	snowflakeNode = node
}

// UUIDint64 returns a new snowflake id.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// UUID returns a new snowflake id in base58 string form.
func UUID() string {
	return snowflakeNode.Generate().Base58()
}

func IsEmptyOrNA(val string) bool {
	return val == "" || val == NA
}
