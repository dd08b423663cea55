package domain

// replyWindow bounds how many owner replies attach to one society review.
const replyWindow = 10

// ThreadReviews reconstructs review threads from the flat per-kos list. The
// upstream API has no parent link for replies; any review authored by the
// kos owner is treated as a reply and attached to society reviews by
// position (a sliding window starting at the review's index). When reply and
// review counts differ the pairing can be wrong; that is accepted, since the
// data offers nothing better.
func ThreadReviews(ownerID int, reviews []Review) []Thread {
	societyReviews := make([]Review, 0, len(reviews))
	ownerReplies := make([]Review, 0)

	for _, r := range reviews {
		if r.UserID == ownerID && ownerID != 0 {
			ownerReplies = append(ownerReplies, r)
		} else {
			societyReviews = append(societyReviews, r)
		}
	}

	threads := make([]Thread, 0, len(societyReviews))
	for i, r := range societyReviews {
		replies := []Review{}
		if i < len(ownerReplies) {
			end := i + replyWindow
			if end > len(ownerReplies) {
				end = len(ownerReplies)
			}
			replies = ownerReplies[i:end]
		}
		threads = append(threads, Thread{Review: r, Replies: replies})
	}

	return threads
}
