package botapp

type addFlowStep int

const (
	stepName addFlowStep = iota
	stepDescription
	stepLink
	stepImage
	stepConfirm
)

// addModState buffers one add or suggest conversation for a chat.
// OwnerFlow decides the status the commit writes.
type addModState struct {
	ActorTGID    int64
	OwnerFlow    bool
	Step         addFlowStep
	Name         string
	Description  string
	DownloadLink string
	ImageKey     string
}

type categoryAddState struct {
	ActorTGID    int64
	AwaitingName bool
	Name         string
}

// reviewState is a snapshot of pending mod ids taken when the pass
// started. The slice is never mutated, the index only moves forward.
type reviewState struct {
	ActorTGID int64
	IDs       []int64
	Index     int
}

func setAddState(a *App, chatID int64, state addModState) {
	a.addMu.Lock()
	defer a.addMu.Unlock()
	a.addByChat[chatID] = state
}

func getAddState(a *App, chatID int64) (addModState, bool) {
	a.addMu.Lock()
	defer a.addMu.Unlock()
	state, ok := a.addByChat[chatID]
	return state, ok
}

func deleteAddState(a *App, chatID int64) {
	a.addMu.Lock()
	defer a.addMu.Unlock()
	delete(a.addByChat, chatID)
}

func setCategoryState(a *App, chatID int64, state categoryAddState) {
	a.categoryMu.Lock()
	defer a.categoryMu.Unlock()
	a.categoryByChat[chatID] = state
}

func getCategoryState(a *App, chatID int64) (categoryAddState, bool) {
	a.categoryMu.Lock()
	defer a.categoryMu.Unlock()
	state, ok := a.categoryByChat[chatID]
	return state, ok
}

func deleteCategoryState(a *App, chatID int64) {
	a.categoryMu.Lock()
	defer a.categoryMu.Unlock()
	delete(a.categoryByChat, chatID)
}

func setReviewState(a *App, chatID int64, state reviewState) {
	a.reviewMu.Lock()
	defer a.reviewMu.Unlock()
	a.reviewByChat[chatID] = state
}

func getReviewState(a *App, chatID int64) (reviewState, bool) {
	a.reviewMu.Lock()
	defer a.reviewMu.Unlock()
	state, ok := a.reviewByChat[chatID]
	return state, ok
}

func deleteReviewState(a *App, chatID int64) {
	a.reviewMu.Lock()
	defer a.reviewMu.Unlock()
	delete(a.reviewByChat, chatID)
}

// clearFlowState drops every in-progress conversation for the chat.
func clearFlowState(a *App, chatID int64) {
	deleteAddState(a, chatID)
	deleteCategoryState(a, chatID)
	deleteReviewState(a, chatID)
}
