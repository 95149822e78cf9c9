package ui

const (
	MsgOwnerGreeting = "Mod Catalog admin panel"
	MsgUserGreeting  = "Welcome to the Mod Catalog bot!\nFound a great mod? Suggest it and the catalog owner will review it."

	MsgUnknownCommand     = "Unknown command. Use /start"
	MsgUnrecognizedAction = "Unrecognized action. Use /start"
	MsgAccessDenied       = "This action is available to the catalog owner only"
	MsgCancelled          = "Cancelled"

	MsgAskName        = "Send the mod name"
	MsgAskDescription = "Send the mod description"
	MsgAskLink        = "Send the download link"
	MsgAskImage       = "Send a preview image"
	MsgNeedText       = "Please send plain text"
	MsgNeedPhoto      = "Please send a photo"
	MsgSaveFailed     = "Could not save, try confirming again"
	MsgImageFailed    = "Could not store the image, try sending it again"

	MsgModPublished    = "Mod published to the catalog"
	MsgSuggestionSent  = "Thanks! Your suggestion was sent for review"
	MsgAskCategoryName = "Send the category name"
	MsgCategoryExists  = "A category with this name already exists"
	MsgCategoryAdded   = "Category added"
	MsgNoCategories    = "No categories yet"

	MsgNothingToReview  = "Nothing to review"
	MsgReviewDone       = "No more pending items"
	MsgReviewItemGone   = "This item is no longer available"
	MsgAlreadyReviewed  = "This item was already reviewed"
	MsgReviewStale      = "This button belongs to an earlier card"
	MsgReviewApproved   = "Approved and published"
	MsgReviewRejected   = "Rejected"
	MsgReviewLoadFailed = "Could not load the review queue"
	MsgDecisionFailed   = "Could not apply the decision"
)
