package corpus

// Stop-word lists for the accepted languages. The lists follow the usual
// Snowball inventories; tokens are matched after lowercasing and before
// stemming.

var englishStopwords = []string{
	"a", "about", "above", "after", "again", "against", "all", "am", "an",
	"and", "any", "are", "aren't", "as", "at", "be", "because", "been",
	"before", "being", "below", "between", "both", "but", "by", "can't",
	"cannot", "could", "couldn't", "did", "didn't", "do", "does", "doesn't",
	"doing", "don't", "down", "during", "each", "few", "for", "from",
	"further", "had", "hadn't", "has", "hasn't", "have", "haven't", "having",
	"he", "he'd", "he'll", "he's", "her", "here", "here's", "hers",
	"herself", "him", "himself", "his", "how", "how's", "i", "i'd", "i'll",
	"i'm", "i've", "if", "in", "into", "is", "isn't", "it", "it's", "its",
	"itself", "let's", "me", "more", "most", "mustn't", "my", "myself",
	"no", "nor", "not", "of", "off", "on", "once", "only", "or", "other",
	"ought", "our", "ours", "ourselves", "out", "over", "own", "same",
	"shan't", "she", "she'd", "she'll", "she's", "should", "shouldn't",
	"so", "some", "such", "than", "that", "that's", "the", "their",
	"theirs", "them", "themselves", "then", "there", "there's", "these",
	"they", "they'd", "they'll", "they're", "they've", "this", "those",
	"through", "to", "too", "under", "until", "up", "very", "was", "wasn't",
	"we", "we'd", "we'll", "we're", "we've", "were", "weren't", "what",
	"what's", "when", "when's", "where", "where's", "which", "while",
	"who", "who's", "whom", "why", "why's", "with", "won't", "would",
	"wouldn't", "you", "you'd", "you'll", "you're", "you've", "your",
	"yours", "yourself", "yourselves",
}

var frenchStopwords = []string{
	"a", "ai", "aie", "aient", "aies", "ait", "alors", "as", "au", "aucun",
	"aura", "aurai", "auraient", "aurais", "aurait", "auras", "aurez",
	"auriez", "aurions", "aurons", "auront", "aussi", "autre", "aux",
	"avaient", "avais", "avait", "avant", "avec", "avez", "aviez", "avions",
	"avoir", "avons", "ayant", "ayez", "ayons", "bon", "car", "ce", "ceci",
	"cela", "ces", "cet", "cette", "chaque", "ci", "comme", "comment",
	"d", "dans", "de", "dedans", "dehors", "depuis", "des", "deux",
	"devrait", "doit", "donc", "dos", "du", "elle", "elles", "en",
	"encore", "es", "est", "et", "eu", "eue", "eues", "eurent", "eus",
	"eusse", "eussent", "eusses", "eussiez", "eussions", "eut", "eux",
	"furent", "fus", "fusse", "fussent", "fusses", "fussiez", "fussions",
	"fut", "ici", "il", "ils", "j", "je", "juste", "l", "la", "le", "les",
	"leur", "leurs", "lui", "m", "ma", "maintenant", "mais", "me", "mes",
	"mine", "moi", "moins", "mon", "mot", "même", "n", "ne", "ni", "nommés",
	"nos", "notre", "nous", "nouveaux", "on", "ont", "ou", "où", "par",
	"parce", "pas", "peu", "peut", "plupart", "pour", "pourquoi", "qu",
	"quand", "que", "quel", "quelle", "quelles", "quels", "qui", "s", "sa",
	"sans", "se", "sera", "serai", "seraient", "serais", "serait", "seras",
	"serez", "seriez", "serions", "serons", "seront", "ses", "seulement",
	"si", "sien", "soi", "soient", "sois", "soit", "sommes", "son", "sont",
	"sous", "soyez", "soyons", "suis", "sur", "t", "ta", "tandis", "te",
	"tellement", "tels", "tes", "toi", "ton", "tous", "tout", "trop",
	"très", "tu", "un", "une", "vont", "vos", "votre", "vous", "vu", "y",
	"à", "ça", "étaient", "étais", "était", "étant", "état", "étiez",
	"étions", "été", "étée", "étées", "étés", "êtes", "être",
}
