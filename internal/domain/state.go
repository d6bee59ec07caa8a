package domain

// FeedStatus discriminates the three ReviewsState variants.
type FeedStatus int

const (
	FeedLoading FeedStatus = iota
	FeedLoaded
	FeedError
)

func (s FeedStatus) String() string {
	switch s {
	case FeedLoading:
		return "loading"
	case FeedLoaded:
		return "loaded"
	case FeedError:
		return "error"
	}
	return "unknown"
}

// ReviewsState is the single UI-observable value published by the review
// feed. Each transition is a wholly new value; Reviews is only meaningful
// for FeedLoaded and ErrorMessage only for FeedError.
type ReviewsState struct {
	Status       FeedStatus
	Reviews      Reviews
	ErrorMessage string
}

func LoadingState() ReviewsState {
	return ReviewsState{Status: FeedLoading}
}

func LoadedState(reviews Reviews) ReviewsState {
	return ReviewsState{Status: FeedLoaded, Reviews: reviews}
}

func ErrorState(message string) ReviewsState {
	return ReviewsState{Status: FeedError, ErrorMessage: message}
}
