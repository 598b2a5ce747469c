package audit

import "context"

// Classifier derives audit facts from one stream's full membership: how many
// internal members it has, who they are, which external organization sits on
// the other side, and who created the stream. The fetched Stream is never
// mutated; all derived state lands in a Classification value.
type Classifier struct {
	directory   Directory
	publicPodID int64
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(c *Classifier)

// WithPublicPod sets the company id of the platform's shared public pod.
// External members of that pod carry no company name of their own and are
// reported under PublicPodCompany.
func WithPublicPod(id int64) ClassifierOption {
	return func(c *Classifier) {
		c.publicPodID = id
	}
}

// NewClassifier constructs a Classifier. directory backs the final creator
// resolution tier and may be nil in tests that never reach it.
func NewClassifier(directory Directory, opts ...ClassifierOption) *Classifier {
	c := &Classifier{directory: directory}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// scanResult is what a single pass over the membership can establish on its
// own, before the fallback chains run.
type scanResult struct {
	internalCount int
	internalNames []string
	counterparty  string
	creator       string
}

// scan walks members in received order. Once the stream has two internal
// members and both counterparty and creator are known it stops early: the
// stream can no longer be a violation and its derived fields are sufficiently
// populated for reporting. The early exit never changes the violation
// predicate, only how much of a passing stream's membership gets scanned.
func (c *Classifier) scan(members []Member) scanResult {
	var res scanResult
	for _, m := range members {
		if !m.User.External {
			res.internalCount++
			res.internalNames = append(res.internalNames, m.User.DisplayName)
		} else if res.counterparty == "" {
			switch {
			case m.User.Company != "":
				res.counterparty = m.User.Company
			case c.publicPodID != 0 && m.User.CompanyID == c.publicPodID:
				res.counterparty = PublicPodCompany
			}
		}

		if m.IsCreator && m.User.DisplayName != "" && res.creator == "" {
			res.creator = displayWithCompany(m.User)
		}

		if res.internalCount >= 2 && res.counterparty != "" && res.creator != "" {
			break
		}
	}
	return res
}

// Classify scans the membership and resolves the two derived identities
// through their fallback chains. Counterparty: conversation-level origin
// company first, then the first external company seen in the scan.
// Creator: the creator-flagged member first, then a directory lookup by the
// recorded creator user id. Either chain exhausting leaves the Unresolved
// sentinel.
func (c *Classifier) Classify(ctx context.Context, stream Stream, members []Member) (Classification, error) {
	res := c.scan(members)

	cls := Classification{
		InternalCount: res.internalCount,
		InternalNames: res.internalNames,
		MemberCount:   len(members),
		Counterparty:  Unresolved,
		Creator:       Unresolved,
	}

	counterparty, err := resolveFirst(ctx,
		originCounterpartyTier(stream),
		staticTier(res.counterparty),
	)
	if err != nil {
		return Classification{}, err
	}
	if counterparty != "" {
		cls.Counterparty = counterparty
	}

	creator, err := resolveFirst(ctx,
		staticTier(res.creator),
		directoryCreatorTier(c.directory, stream.Attributes.CreatedByUserID),
	)
	if err != nil {
		return Classification{}, err
	}
	if creator != "" {
		cls.Creator = creator
	}

	return cls, nil
}
