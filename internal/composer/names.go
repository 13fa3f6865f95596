package composer

import (
	"strings"

	"cadenza/internal/textnorm"
)

// fullNames expands well-known composer surnames to the full name used in
// persisted records. Titles like "Bach: Cello Suite No. 1" carry only the
// surname; the table recovers the display form. Unknown names pass
// through unchanged.
var fullNames = map[string]string{
	"albinoni":     "Tomaso Albinoni",
	"bach":         "Johann Sebastian Bach",
	"beethoven":    "Ludwig van Beethoven",
	"brahms":       "Johannes Brahms",
	"britten":      "Benjamin Britten",
	"bruckner":     "Anton Bruckner",
	"buxtehude":    "Dieterich Buxtehude",
	"byrd":         "William Byrd",
	"chopin":       "Frédéric Chopin",
	"corelli":      "Arcangelo Corelli",
	"couperin":     "François Couperin",
	"debussy":      "Claude Debussy",
	"dowland":      "John Dowland",
	"dvorak":       "Antonín Dvořák",
	"elgar":        "Edward Elgar",
	"faure":        "Gabriel Fauré",
	"grieg":        "Edvard Grieg",
	"handel":       "George Frideric Handel",
	"haydn":        "Joseph Haydn",
	"holst":        "Gustav Holst",
	"josquin":      "Josquin des Prez",
	"liszt":        "Franz Liszt",
	"mahler":       "Gustav Mahler",
	"mendelssohn":  "Felix Mendelssohn",
	"monteverdi":   "Claudio Monteverdi",
	"mozart":       "Wolfgang Amadeus Mozart",
	"palestrina":   "Giovanni Pierluigi da Palestrina",
	"prokofiev":    "Sergei Prokofiev",
	"puccini":      "Giacomo Puccini",
	"purcell":      "Henry Purcell",
	"rachmaninoff": "Sergei Rachmaninoff",
	"rameau":       "Jean-Philippe Rameau",
	"ravel":        "Maurice Ravel",
	"saintsaens":   "Camille Saint-Saëns",
	"satie":        "Erik Satie",
	"scarlatti":    "Domenico Scarlatti",
	"schubert":     "Franz Schubert",
	"schumann":     "Robert Schumann",
	"shostakovich": "Dmitri Shostakovich",
	"sibelius":     "Jean Sibelius",
	"stravinsky":   "Igor Stravinsky",
	"tallis":       "Thomas Tallis",
	"tchaikovsky":  "Pyotr Ilyich Tchaikovsky",
	"telemann":     "Georg Philipp Telemann",
	"verdi":        "Giuseppe Verdi",
	"vivaldi":      "Antonio Vivaldi",
	"wagner":       "Richard Wagner",
}

// knownSurname reports whether the candidate, normalized, is one of the
// historical composer surnames in the expansion table.
func knownSurname(candidate string) bool {
	_, ok := fullNames[textnorm.Normalize(candidate)]
	return ok
}

// expandName maps a surname, or a name ending in a known surname such as
// "J.S. Bach", to the composer's full name. Input passes through
// unchanged when no table entry matches.
func expandName(candidate string) string {
	normalized := textnorm.Normalize(candidate)
	if full, ok := fullNames[normalized]; ok {
		return full
	}
	fields := strings.Fields(normalized)
	if len(fields) > 1 {
		if full, ok := fullNames[fields[len(fields)-1]]; ok {
			return full
		}
	}
	return candidate
}
