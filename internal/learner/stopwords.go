package learner

// #region stopwords
// stopwords contains common English function words excluded from keyword
// extraction. Kept small and fixed — no frequency or IDF filtering.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true,
	"did": true, "will": true, "would": true, "could": true, "should": true,
	"may": true, "might": true, "shall": true, "can": true, "need": true,
	"must": true,
	"i": true, "you": true, "he": true, "she": true, "it": true,
	"we": true, "they": true, "me": true, "him": true, "her": true,
	"us": true, "them": true, "my": true, "your": true, "his": true,
	"its": true, "our": true, "their": true,
	"this": true, "that": true, "these": true, "those": true, "what": true,
	"which": true, "who": true, "whom": true,
	"where": true, "when": true, "why": true, "how": true, "all": true,
	"each": true, "every": true, "both": true,
	"few": true, "more": true, "most": true, "other": true, "some": true,
	"such": true, "no": true, "not": true,
	"only": true, "own": true, "same": true, "so": true, "than": true,
	"too": true, "very": true,
	"and": true, "but": true, "or": true, "nor": true, "for": true,
	"yet": true, "of": true, "to": true, "in": true, "on": true,
	"at": true, "by": true, "from": true, "with": true, "about": true,
	"between": true, "through": true, "during": true,
	"before": true, "after": true, "above": true, "below": true,
	"up": true, "down": true, "out": true, "off": true,
	"over": true, "under": true, "again": true, "then": true,
	"once": true, "here": true, "there": true,
	"just": true, "also": true, "now": true, "if": true, "as": true,
	"into": true, "like": true, "because": true,
	"while": true, "although": true, "since": true, "until": true,
	"unless": true, "however": true,
	"therefore": true, "thus": true, "hence": true, "well": true,
	"still": true, "even": true, "much": true,
	"many": true, "any": true, "really": true, "quite": true,
	"rather": true, "often": true, "always": true,
	"never": true, "sometimes": true, "already": true, "almost": true,
	"actually": true, "perhaps": true,
	"simply": true, "generally": true, "typically": true,
	"especially": true, "specifically": true,
	"essentially": true, "particularly": true, "certainly": true,
	"probably": true, "possibly": true,
	"basically": true, "relatively": true, "apparently": true,
	"effectively": true, "merely": true,
	"one": true, "two": true, "three": true, "first": true,
	"second": true, "new": true, "way": true,
	"get": true, "got": true, "make": true, "made": true, "take": true,
	"go": true, "going": true, "come": true,
	"say": true, "said": true, "tell": true, "know": true, "think": true,
	"see": true, "look": true, "give": true,
	"thing": true, "things": true, "something": true, "anything": true,
	"everything": true, "nothing": true,
	"people": true, "person": true, "time": true, "year": true,
	"years": true, "part": true,
}

// #endregion
