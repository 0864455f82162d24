package models

type (
	// PullRequest holds the fields used when summarizing or merging a PR.
	// List endpoints only populate the header fields (number, title, URL);
	// commit counts, mergeability and the merged-by login come from Get.
	PullRequest struct {
		Number         int
		Title          string
		HTMLURL        string
		State          string
		Merged         bool
		Mergeable      *bool
		Commits        int
		Additions      int
		Deletions      int
		ChangedFiles   int
		HeadRef        string
		HeadSHA        string
		BaseSHA        string
		UserLogin      string
		MergedByLogin  string
		Comments       int
		ReviewComments int
	}

	// MergeResult is the outcome reported by the merge endpoint.
	MergeResult struct {
		SHA     string
		Merged  bool
		Message string
	}
)
