package gacha

// BaseWeights apply when no pity is in effect
var BaseWeights = Weights{Common: 70, Rare: 25, Epic: 5}

// Pity thresholds. A counter at the threshold forces the tier on the next
// draw, so a rare is guaranteed within 10 draws and an epic within 50.
const (
	HardPityRare = 9
	HardPityEpic = 49
)

// Soft pity: rare gains one weight per dry draw up to the cap, epic gains
// one weight per SoftPityEpicStep dry draws up to the cap
const (
	SoftPityRareCap  = 10
	SoftPityEpicCap  = 5
	SoftPityEpicStep = 5
)

// MaxWishCount bounds a single batch
const MaxWishCount = 100

// PurposeWish labels gem spends made by PurchaseWish
const PurposeWish = "wish"

// Transaction operation names
const (
	opWish         = "wish"
	opPurchaseWish = "purchase_wish"
	opEquip        = "equip"
)

// DefaultSimulationTrials is used when a simulation asks for no trials
const DefaultSimulationTrials = 10000

// Log messages
const (
	LogMsgWishCompleted    = "Wish completed"
	LogMsgWishUnaffordable = "Wish rejected: insufficient gems"
	LogMsgArtifactDrawn    = "Artifact drawn"
	LogMsgArtifactEquip    = "Artifact equip changed"
)

// Error messages
const (
	ErrMsgMarshalPayload = "failed to encode artifact payload"
	ErrMsgReadArtifact   = "failed to read drawn artifact"
	ErrMsgLoadCatalog    = "failed to load artifact catalog"
)
