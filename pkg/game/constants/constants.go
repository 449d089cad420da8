package constants

const (
	// ArenaWidth is the width of the playable area
	ArenaWidth float64 = 800.0
	// ArenaHeight is the height of the playable area
	ArenaHeight float64 = 800.0

	// PlayerStepScale is the distance covered per tick by a unit input
	PlayerStepScale float64 = 2.0
	// Player Height
	PlayerHeight float64 = 32.0
	// Player Width
	PlayerWidth float64 = 32.0
	// Player Starting X
	PlayerStartingX float64 = 400.0
	// Player Starting Y
	PlayerStartingY float64 = 400.0

	// MobWanderRange bounds the per-axis random step of a wandering mob
	MobWanderRange float64 = 5.0
	// MobCountMin is the smallest mob population spawned at start
	MobCountMin int = 5
	// MobCountMax is the largest mob population spawned at start
	MobCountMax int = 10

	// CollisionCellSize is the cell size of the broad phase collision space
	CollisionCellSize int = 32
	// CollisionPadding widens broad phase objects so that sub-unit overlaps on a cell edge still share a cell
	CollisionPadding float64 = 1.0
)
