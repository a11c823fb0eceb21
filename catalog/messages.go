package catalog

import "github.com/fwojciec/recordscout"

var english = map[recordscout.MessageKey]string{
	recordscout.MsgCheckingAPIKey:       "Checking API key...",
	recordscout.MsgExtractingMusicInfo:  "Identifying the music on this page...",
	recordscout.MsgGoogleSearching:      "Searching: %s",
	recordscout.MsgLookingForDiscogs:    "Looking for a Discogs page...",
	recordscout.MsgFetchingDiscogs:      "Fetching the Discogs page...",
	recordscout.MsgAnalyzingDiscogs:     "Analyzing the Discogs page...",
	recordscout.MsgExtractingDetails:    "Extracting release details...",
	recordscout.MsgProcessingComplete:   "Done.",
	recordscout.MsgExtractingPage:       "Extracting page content...",
	recordscout.MsgAPIKeyNotSet:         "API key is not set. Run 'recordscout config set --api-key'.",
	recordscout.MsgModelNotSelected:     "No model selected. Run 'recordscout config set --model'.",
	recordscout.MsgModelNotAvailable:    "Model %s is not available.",
	recordscout.MsgParseFailed:          "Failed to parse the model response: %s",
	recordscout.MsgInferenceFailed:      "The model request failed: %s",
	recordscout.MsgCouldNotExtractInfo:  "Could not identify an artist or title on this page.",
	recordscout.MsgGoogleSearchFailed:   "Web search failed: %s",
	recordscout.MsgNoDiscogsURL:         "No Discogs page found in the search results.",
	recordscout.MsgFetchDiscogsFailed:   "Failed to fetch the Discogs page: %s",
	recordscout.MsgOffscreenAccessError: "Could not reach the page parser.",
	recordscout.MsgDiscogsContentError:  "Could not extract content from the Discogs page.",
	recordscout.MsgBackgroundError:      "Unexpected error: %s",
	recordscout.MsgUnknownError:         "An unknown error occurred.",
	recordscout.MsgInsufficientContent:  "Not enough content on this page.",
	recordscout.MsgExtractionError:      "Content extraction failed: %s",
	recordscout.MsgRestrictedPage:       "This page cannot be read. Try a regular web page (http:// or https://).",
	recordscout.MsgScriptUnavailable:    "The content script is not responding. Reload the page and try again.",
	recordscout.MsgExtensionBroken:      "Could not start the content script. Reload the page and try again.",
	recordscout.MsgExtractionTimeout:    "Content extraction timed out.",
	recordscout.MsgTransportFailed:      "Communication with the page failed: %s",
	recordscout.MsgEmptyContent:         "The extracted content is empty.",
}

var japanese = map[recordscout.MessageKey]string{
	recordscout.MsgCheckingAPIKey:       "APIキーを確認中...",
	recordscout.MsgExtractingMusicInfo:  "ページから音楽情報を抽出中...",
	recordscout.MsgGoogleSearching:      "検索中: %s",
	recordscout.MsgLookingForDiscogs:    "Discogsのページを探しています...",
	recordscout.MsgFetchingDiscogs:      "Discogsのページを取得中...",
	recordscout.MsgAnalyzingDiscogs:     "Discogsのページを解析中...",
	recordscout.MsgExtractingDetails:    "リリース情報を抽出中...",
	recordscout.MsgProcessingComplete:   "処理完了！",
	recordscout.MsgExtractingPage:       "ページコンテンツを抽出中...",
	recordscout.MsgAPIKeyNotSet:         "APIキーが設定されていません。",
	recordscout.MsgModelNotSelected:     "モデルが選択されていません。",
	recordscout.MsgModelNotAvailable:    "モデル %s は利用できません。",
	recordscout.MsgParseFailed:          "AIの応答を解析できませんでした: %s",
	recordscout.MsgInferenceFailed:      "AIへのリクエストに失敗しました: %s",
	recordscout.MsgCouldNotExtractInfo:  "このページからアーティストやタイトルを特定できませんでした。",
	recordscout.MsgGoogleSearchFailed:   "Google検索に失敗しました: %s",
	recordscout.MsgNoDiscogsURL:         "検索結果にDiscogsのページが見つかりませんでした。",
	recordscout.MsgFetchDiscogsFailed:   "Discogsのページを取得できませんでした: %s",
	recordscout.MsgOffscreenAccessError: "ページ解析にアクセスできませんでした。",
	recordscout.MsgDiscogsContentError:  "Discogsのページからコンテンツを抽出できませんでした。",
	recordscout.MsgBackgroundError:      "予期しないエラーが発生しました: %s",
	recordscout.MsgUnknownError:         "不明なエラーが発生しました。",
	recordscout.MsgInsufficientContent:  "ページのコンテンツが不足しています。",
	recordscout.MsgExtractionError:      "コンテンツの抽出に失敗しました: %s",
	recordscout.MsgRestrictedPage:       "このページでは拡張機能を使用できません。通常のWebページでお試しください。",
	recordscout.MsgScriptUnavailable:    "コンテンツスクリプトが正常に動作しません。ページをリロードしてから再度お試しください。",
	recordscout.MsgExtensionBroken:      "拡張機能が正常に動作しません。ページをリロードしてから再度お試しください。",
	recordscout.MsgExtractionTimeout:    "コンテンツ抽出がタイムアウトしました",
	recordscout.MsgTransportFailed:      "コンテンツスクリプトとの通信に失敗しました: %s",
	recordscout.MsgEmptyContent:         "抽出されたコンテンツが空です",
}
