// Package errors provides structured error handling for the engine.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Card errors
	CodeCardInvalidID       Code = "CARD_INVALID_ID"
	CodeCardEmptyName       Code = "CARD_EMPTY_NAME"
	CodeCardInvalidKind     Code = "CARD_INVALID_KIND"
	CodeCardInvalidDistance Code = "CARD_INVALID_DISTANCE"
	CodeCardInvalidSuit     Code = "CARD_INVALID_SUIT"
	CodeCardInvalidRank     Code = "CARD_INVALID_RANK"
	CodeCardIDDuplicate     Code = "CARD_ID_DUPLICATE"
	CodeCardNotFound        Code = "CARD_NOT_FOUND"

	// Collection errors
	CodeCollectionInsufficientCards Code = "COLLECTION_INSUFFICIENT_CARDS"

	// Player errors
	CodePlayerInvalidID     Code = "PLAYER_INVALID_ID"
	CodePlayerInvalidName   Code = "PLAYER_INVALID_NAME"
	CodePlayerInvalidLives  Code = "PLAYER_INVALID_LIVES"
	CodePlayerInvalidCard   Code = "PLAYER_INVALID_CARD"
	CodePlayerNotFound      Code = "PLAYER_NOT_FOUND"
	CodePlayerIDTaken       Code = "PLAYER_ID_TAKEN"
	CodePlayerNameTaken     Code = "PLAYER_NAME_TAKEN"
	CodePlayerTokenTaken    Code = "PLAYER_TOKEN_TAKEN"
	CodePlayerMissingRole   Code = "PLAYER_MISSING_ROLE"
	CodePlayerMissingWeapon Code = "PLAYER_MISSING_WEAPON"

	// Distance errors
	CodeDistancePairMissing Code = "DISTANCE_PAIR_MISSING"

	// Table errors
	CodeTableInvalidInteraction Code = "TABLE_INVALID_INTERACTION"
	CodeTableInvalidCount       Code = "TABLE_INVALID_COUNT"

	// Rule errors
	CodeRuleSessionActive    Code = "RULE_SESSION_ACTIVE"
	CodeRuleSessionInactive  Code = "RULE_SESSION_INACTIVE"
	CodeRuleNoTarget         Code = "RULE_NO_TARGET"
	CodeRuleSelfTarget       Code = "RULE_SELF_TARGET"
	CodeRuleInvalidTarget    Code = "RULE_INVALID_TARGET"
	CodeRuleNotPlayable      Code = "RULE_NOT_PLAYABLE"
	CodeRuleTargetOutOfRange Code = "RULE_TARGET_OUT_OF_RANGE"
	CodeRuleAttackLimit      Code = "RULE_ATTACK_LIMIT"
	CodeRuleActionVetoed     Code = "RULE_ACTION_VETOED"
	CodeRuleNotEnoughPlayers Code = "RULE_NOT_ENOUGH_PLAYERS"
	CodeRuleUnknownCard      Code = "RULE_UNKNOWN_CARD"

	// History errors
	CodeHistoryMoveNumberTaken Code = "HISTORY_MOVE_NUMBER_TAKEN"
	CodeHistoryInvalidMove     Code = "HISTORY_INVALID_MOVE"

	// Snapshot errors
	CodeSnapshotSectionMissing Code = "SNAPSHOT_SECTION_MISSING"
	CodeSnapshotMalformed      Code = "SNAPSHOT_MALFORMED"
	CodeSnapshotNotFound       Code = "SNAPSHOT_NOT_FOUND"
	CodeSnapshotWriteFailed    Code = "SNAPSHOT_WRITE_FAILED"

	// Access key errors
	CodeAccessKeyInvalid Code = "ACCESS_KEY_INVALID"
	CodeAccessKeyExpired Code = "ACCESS_KEY_EXPIRED"
)

// Kind groups codes into the engine's error taxonomy.
type Kind string

const (
	// KindValidation marks malformed fields rejected at a mutation boundary.
	KindValidation Kind = "validation"
	// KindRuleViolation marks well-formed but game-illegal actions.
	KindRuleViolation Kind = "rule_violation"
	// KindNotFound marks lookup misses on required singular queries.
	KindNotFound Kind = "not_found"
	// KindConflict marks uniqueness collisions on ids, names, and tokens.
	KindConflict Kind = "conflict"
	// KindPersistence marks snapshot encode/decode and storage failures.
	KindPersistence Kind = "persistence"
	// KindUnknown marks unclassified codes.
	KindUnknown Kind = "unknown"
)

var kindByCode = map[Code]Kind{
	CodeCardInvalidID:       KindValidation,
	CodeCardEmptyName:       KindValidation,
	CodeCardInvalidKind:     KindValidation,
	CodeCardInvalidDistance: KindValidation,
	CodeCardInvalidSuit:     KindValidation,
	CodeCardInvalidRank:     KindValidation,
	CodeCardIDDuplicate:     KindConflict,
	CodeCardNotFound:        KindNotFound,

	CodeCollectionInsufficientCards: KindRuleViolation,

	CodePlayerInvalidID:     KindValidation,
	CodePlayerInvalidName:   KindValidation,
	CodePlayerInvalidLives:  KindValidation,
	CodePlayerInvalidCard:   KindValidation,
	CodePlayerNotFound:      KindNotFound,
	CodePlayerIDTaken:       KindConflict,
	CodePlayerNameTaken:     KindConflict,
	CodePlayerTokenTaken:    KindConflict,
	CodePlayerMissingRole:   KindRuleViolation,
	CodePlayerMissingWeapon: KindRuleViolation,

	CodeDistancePairMissing: KindNotFound,

	CodeTableInvalidInteraction: KindValidation,
	CodeTableInvalidCount:       KindValidation,

	CodeRuleSessionActive:    KindRuleViolation,
	CodeRuleSessionInactive:  KindRuleViolation,
	CodeRuleNoTarget:         KindRuleViolation,
	CodeRuleSelfTarget:       KindRuleViolation,
	CodeRuleInvalidTarget:    KindRuleViolation,
	CodeRuleNotPlayable:      KindRuleViolation,
	CodeRuleTargetOutOfRange: KindRuleViolation,
	CodeRuleAttackLimit:      KindRuleViolation,
	CodeRuleActionVetoed:     KindRuleViolation,
	CodeRuleNotEnoughPlayers: KindRuleViolation,
	CodeRuleUnknownCard:      KindRuleViolation,

	CodeHistoryMoveNumberTaken: KindConflict,
	CodeHistoryInvalidMove:     KindValidation,

	CodeSnapshotSectionMissing: KindPersistence,
	CodeSnapshotMalformed:      KindPersistence,
	CodeSnapshotNotFound:       KindNotFound,
	CodeSnapshotWriteFailed:    KindPersistence,

	CodeAccessKeyInvalid: KindValidation,
	CodeAccessKeyExpired: KindRuleViolation,
}

// KindOf returns the taxonomy kind for a code.
func (c Code) KindOf() Kind {
	if kind, ok := kindByCode[c]; ok {
		return kind
	}
	return KindUnknown
}
