package audit

import (
	"context"
	"fmt"
)

// resolverTier is one step of a fallback chain. It returns the resolved value
// or the empty string when this tier cannot decide. Tiers are tried in order;
// a later tier is consulted only when every earlier one came back empty.
type resolverTier func(ctx context.Context) (string, error)

// resolveFirst runs tiers in order and returns the first resolved value, or
// the empty string when the whole chain is exhausted.
func resolveFirst(ctx context.Context, tiers ...resolverTier) (string, error) {
	for _, tier := range tiers {
		value, err := tier(ctx)
		if err != nil {
			return "", err
		}
		if value != "" {
			return value, nil
		}
	}
	return "", nil
}

// staticTier wraps a value already derived elsewhere (e.g. the membership
// scan) as a chain tier.
func staticTier(value string) resolverTier {
	return func(context.Context) (string, error) {
		return value, nil
	}
}

// originCounterpartyTier resolves the counterparty from the stream's own
// origin-company attribute. An externally-originated stream records its
// authoritative counterparty at the conversation level, so this tier sits
// ahead of anything inferred from membership.
func originCounterpartyTier(stream Stream) resolverTier {
	return func(context.Context) (string, error) {
		if stream.Origin == OriginExternal && stream.Attributes.OriginCompany != "" {
			return stream.Attributes.OriginCompany, nil
		}
		return "", nil
	}
}

// directoryCreatorTier resolves the creator through a batch user lookup with
// a single-element id list. It is the final creator tier, reached when the
// creating user no longer appears in the membership (e.g. they left the
// stream). An empty lookup result leaves the tier unresolved; it is not an
// error.
func directoryCreatorTier(directory Directory, userID int64) resolverTier {
	return func(ctx context.Context) (string, error) {
		if directory == nil || userID == 0 {
			return "", nil
		}
		users, err := directory.LookupUsers(ctx, []int64{userID})
		if err != nil {
			return "", err
		}
		if len(users) == 0 {
			return "", nil
		}
		return displayWithCompany(users[0]), nil
	}
}

// displayWithCompany renders a user as "Name (Company)", falling back to the
// bare display name when no company is recorded.
func displayWithCompany(u User) string {
	if u.Company == "" {
		return u.DisplayName
	}
	return fmt.Sprintf("%s (%s)", u.DisplayName, u.Company)
}
