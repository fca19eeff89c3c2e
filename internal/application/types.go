package application

import "opennoution/internal/domain"

// Re-export domain types for use by adapters
type (
	Page           = domain.Page
	Block          = domain.Block
	BlockType      = domain.BlockType
	TreeNode       = domain.TreeNode
	UserProfile    = domain.UserProfile
	BackupEnvelope = domain.BackupEnvelope
)

// ParseBlockType converts a string into a BlockType
func ParseBlockType(s string) (BlockType, error) {
	return domain.ParseBlockType(s)
}
