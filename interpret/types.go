// Package interpret decodes emoji usage in a pasted message: it extracts
// emoji with their positions, resolves them against the content catalog,
// asks a language model for a structured reading, validates that output
// against a strict schema, and assembles the final interpretation.
package interpret

// Platform is the messaging platform the message was received on. It biases
// the model's contextual read (the same emoji lands differently on Slack
// than on Instagram).
type Platform string

const (
	PlatformIMessage  Platform = "imessage"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformWhatsApp  Platform = "whatsapp"
	PlatformSlack     Platform = "slack"
	PlatformDiscord   Platform = "discord"
	PlatformTwitter   Platform = "twitter"
	PlatformOther     Platform = "other"
)

func (p Platform) Valid() bool {
	switch p {
	case PlatformIMessage, PlatformInstagram, PlatformTikTok, PlatformWhatsApp,
		PlatformSlack, PlatformDiscord, PlatformTwitter, PlatformOther:
		return true
	}
	return false
}

// Relationship is the sender's relationship to the reader. It biases tone
// interpretation.
type Relationship string

const (
	RelationshipRomanticPartner Relationship = "romantic_partner"
	RelationshipFriend          Relationship = "friend"
	RelationshipFamily          Relationship = "family"
	RelationshipCoworker        Relationship = "coworker"
	RelationshipAcquaintance    Relationship = "acquaintance"
	RelationshipStranger        Relationship = "stranger"
)

func (r Relationship) Valid() bool {
	switch r {
	case RelationshipRomanticPartner, RelationshipFriend, RelationshipFamily,
		RelationshipCoworker, RelationshipAcquaintance, RelationshipStranger:
		return true
	}
	return false
}

// Tone is the model's overall tone verdict for the message.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNeutral  Tone = "neutral"
	ToneNegative Tone = "negative"
)

func (t Tone) Valid() bool {
	return t == TonePositive || t == ToneNeutral || t == ToneNegative
}

// Severity grades a red flag.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

func (s Severity) Valid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh
}

// ExtractedEmoji is one emoji found in the input message. Character is a
// full grapheme cluster (a ZWJ family or a flag is one entry, not several
// code points). Index is the byte offset of the cluster in the UTF-8 input.
type ExtractedEmoji struct {
	Character string `json:"character"`
	Index     int    `json:"index"`
}

// ModelEmojiMeaning is the model's per-emoji reading, before assembly.
type ModelEmojiMeaning struct {
	Character string `json:"character" jsonschema_description:"The emoji exactly as it appears in the message"`
	Meaning   string `json:"meaning" jsonschema_description:"How this emoji functions in this message's context"`
}

// Metrics are the model's numeric tone signals. Probabilities and
// confidence are percentages in [0,100].
type Metrics struct {
	SarcasmProbability           float64 `json:"sarcasmProbability" jsonschema:"minimum=0,maximum=100"`
	PassiveAggressionProbability float64 `json:"passiveAggressionProbability" jsonschema:"minimum=0,maximum=100"`
	OverallTone                  Tone    `json:"overallTone" jsonschema:"enum=positive,enum=neutral,enum=negative"`
	Confidence                   float64 `json:"confidence" jsonschema:"minimum=0,maximum=100"`
}

// RedFlag is a concerning pattern the model identified in the message.
// Type is deliberately free-form (e.g. "manipulation", "love bombing");
// only Severity is a closed enum.
type RedFlag struct {
	Type        string   `json:"type" jsonschema_description:"Short category label for the pattern"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity" jsonschema:"enum=low,enum=medium,enum=high"`
}

// ModelResponse is the validated shape of the model's raw output. All four
// fields are mandatory; ParseModelResponse is the only way to obtain one
// from untrusted text.
type ModelResponse struct {
	Emojis         []ModelEmojiMeaning `json:"emojis"`
	Interpretation string              `json:"interpretation" jsonschema_description:"Natural-language summary of the message's intent and tone"`
	Metrics        Metrics             `json:"metrics"`
	RedFlags       []RedFlag           `json:"redFlags"`
}

// EmojiMeaning is one emoji in the assembled result: the model's meaning
// plus the catalog slug when the character is known. Slug is omitted
// entirely (never null) for uncataloged emoji.
type EmojiMeaning struct {
	Character string `json:"character"`
	Meaning   string `json:"meaning"`
	Slug      string `json:"slug,omitempty"`
}

// Result is the final interpretation returned to callers. IDs are unique
// per call, not content-addressed.
type Result struct {
	ID             string         `json:"id"`
	Timestamp      string         `json:"timestamp"`
	Message        string         `json:"message"`
	Emojis         []EmojiMeaning `json:"emojis"`
	Interpretation string         `json:"interpretation"`
	Metrics        Metrics        `json:"metrics"`
	RedFlags       []RedFlag      `json:"redFlags"`
}

// Request is the inbound call shape consumed by the Interpreter.
type Request struct {
	Message  string       `json:"message"`
	Platform Platform     `json:"platform"`
	Context  Relationship `json:"context"`
}
