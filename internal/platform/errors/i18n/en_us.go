package i18n

// enUS is the base catalog. Codes without an entry render as the code itself.
var enUS = NewCatalog("en-US", map[Code]string{
	"CARD_INVALID_ID":       "Card id must be a positive integer.",
	"CARD_EMPTY_NAME":       "Card name must not be empty.",
	"CARD_INVALID_KIND":     "Unknown card kind {{.kind}}.",
	"CARD_INVALID_DISTANCE": "Only weapon cards may carry a distance.",
	"CARD_ID_DUPLICATE":     "A card with id {{.id}} already exists.",
	"CARD_NOT_FOUND":        "Card {{.card}} was not found.",

	"COLLECTION_INSUFFICIENT_CARDS": "Cannot draw {{.requested}} cards from a collection of {{.size}}.",

	"PLAYER_INVALID_NAME":  "Player name must be letters only and longer than 4 characters.",
	"PLAYER_INVALID_LIVES": "Life total must stay between 0 and the maximum.",
	"PLAYER_NOT_FOUND":     "Player {{.player}} was not found.",
	"PLAYER_NAME_TAKEN":    "Player name {{.name}} is already taken.",
	"PLAYER_MISSING_ROLE":  "Every player needs a role before seating can be shuffled.",

	"RULE_SESSION_ACTIVE":      "A game session is already in progress.",
	"RULE_SESSION_INACTIVE":    "The game session has not started yet.",
	"RULE_NO_TARGET":           "This card needs a target.",
	"RULE_SELF_TARGET":         "You cannot target yourself with this card.",
	"RULE_INVALID_TARGET":      "That player cannot be targeted by this card.",
	"RULE_NOT_PLAYABLE":        "This card cannot be led with.",
	"RULE_UNKNOWN_CARD":        "Nobody knows how to play {{.card}}.",
	"RULE_TARGET_OUT_OF_RANGE": "{{.target}} is out of range (distance {{.distance}}, reach {{.reach}}).",
	"RULE_ATTACK_LIMIT":        "You already played your attack card this turn.",
	"RULE_ACTION_VETOED":       "The action was cancelled by a card in play.",
	"RULE_NOT_ENOUGH_PLAYERS":  "At least {{.min}} players are needed to start.",

	"HISTORY_MOVE_NUMBER_TAKEN": "Move number {{.number}} is already recorded.",

	"SNAPSHOT_SECTION_MISSING": "The stored session is missing its {{.section}} section.",
	"SNAPSHOT_MALFORMED":       "The stored session could not be parsed.",
	"SNAPSHOT_NOT_FOUND":       "No stored session named {{.session}}.",
	"SNAPSHOT_WRITE_FAILED":    "The session could not be saved.",

	"ACCESS_KEY_INVALID": "The access key is not valid.",
	"ACCESS_KEY_EXPIRED": "The access key has expired.",
})
