package recordscout

// MessageKey identifies a user-facing message.
type MessageKey string

// User-facing messages. Keys taking arguments note them.
const (
	MsgCheckingAPIKey       MessageKey = "checkingApiKey"
	MsgExtractingMusicInfo  MessageKey = "extractingMusicInfo"
	MsgGoogleSearching      MessageKey = "googleSearching" // query
	MsgLookingForDiscogs    MessageKey = "lookingForDiscogs"
	MsgFetchingDiscogs      MessageKey = "fetchingDiscogs"
	MsgAnalyzingDiscogs     MessageKey = "analyzingDiscogs"
	MsgExtractingDetails    MessageKey = "extractingDetails"
	MsgProcessingComplete   MessageKey = "processingCompleteMessage"
	MsgExtractingPage       MessageKey = "extractingPage"
	MsgAPIKeyNotSet         MessageKey = "apiKeyNotSet"
	MsgModelNotSelected     MessageKey = "modelNotSelected"
	MsgModelNotAvailable    MessageKey = "modelNotAvailable" // model
	MsgParseFailed          MessageKey = "parseFailed"       // error
	MsgInferenceFailed      MessageKey = "inferenceFailed"   // error
	MsgCouldNotExtractInfo  MessageKey = "couldNotExtractInfo"
	MsgGoogleSearchFailed   MessageKey = "googleSearchFailed" // error
	MsgNoDiscogsURL         MessageKey = "noDiscogsUrl"
	MsgFetchDiscogsFailed   MessageKey = "fetchDiscogsFailed" // error
	MsgOffscreenAccessError MessageKey = "offscreenAccessError"
	MsgDiscogsContentError  MessageKey = "discogsContentError"
	MsgBackgroundError      MessageKey = "backgroundScriptError" // error
	MsgUnknownError         MessageKey = "unknownError"
	MsgInsufficientContent  MessageKey = "insufficientContent"
	MsgExtractionError      MessageKey = "extractionError" // error
	MsgRestrictedPage       MessageKey = "restrictedPage"
	MsgScriptUnavailable    MessageKey = "contentScriptUnavailable"
	MsgExtensionBroken      MessageKey = "extensionNotWorking"
	MsgExtractionTimeout    MessageKey = "extractionTimeout"
	MsgTransportFailed      MessageKey = "transportFailed" // error
	MsgEmptyContent         MessageKey = "emptyContent"
)

// Localizer renders user-facing messages in the user's language.
type Localizer interface {
	Message(key MessageKey, args ...any) string
}
