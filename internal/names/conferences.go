package names

// conferenceAliases maps a lowercased conference spelling to its canonical
// identifier. Valid for the 2010-11 season onwards.
var conferenceAliases = map[string]string{
	"mid-eastern athletic conference":    "meac",
	"meac":                               "meac",
	"mid-american conference":            "mac",
	"mac":                                "mac",
	"mountain west conference":           "mwc",
	"mwc":                                "mwc",
	"atlantic 10 conference":             "atlantic-10",
	"a-10":                               "atlantic-10",
	"a10":                                "atlantic-10",
	"atlantic-10":                        "atlantic-10",
	"missouri valley conference":         "mvc",
	"mvc":                                "mvc",
	"southern conference":                "southern",
	"sc":                                 "southern",
	"southern":                           "southern",
	"ivy group":                          "ivy",
	"ivy":                                "ivy",
	"sun belt conference":                "sun-belt",
	"sun belt":                           "sun-belt",
	"sb":                                 "sun-belt",
	"sun-belt":                           "sun-belt",
	"conference usa":                     "cusa",
	"cusa":                               "cusa",
	"western athletic conference":        "wac",
	"wac":                                "wac",
	"horizon league":                     "horizon",
	"horizon":                            "horizon",
	"horz":                               "horizon",
	"colonial athletic association":      "colonial",
	"caa":                                "colonial",
	"colonial":                           "colonial",
	"big west conference":                "big-west",
	"bw":                                 "big-west",
	"big west":                           "big-west",
	"big-west":                           "big-west",
	"atlantic sun conference":            "atlantic-sun",
	"a-sun":                              "atlantic-sun",
	"asun":                               "atlantic-sun",
	"atlantic-sun":                       "atlantic-sun",
	"summit league":                      "summit",
	"summit":                             "summit",
	"sum":                                "summit",
	"patriot league":                     "patriot",
	"patriot":                            "patriot",
	"pat":                                "patriot",
	"ohio valley conference":             "ovc",
	"ovc":                                "ovc",
	"big south conference":               "big-south",
	"big south":                          "big-south",
	"big-south":                          "big-south",
	"bsth":                               "big-south",
	"america east conference":            "america-east",
	"aec":                                "america-east",
	"ae":                                 "america-east",
	"america-east":                       "america-east",
	"big sky conference":                 "big-sky",
	"big sky":                            "big-sky",
	"big-sky":                            "big-sky",
	"bsky":                               "big-sky",
	"metro atlantic athletic conference": "maac",
	"maac":                               "maac",
	"southland conference":               "southland",
	"southland":                          "southland",
	"slnd":                               "southland",
	"northeast conference":               "northeast",
	"nec":                                "northeast",
	"northeast":                          "northeast",
	"southwest athletic conference":      "swac",
	"swac":                               "swac",
	"big ten conference":                 "big-ten",
	"big ten":                            "big-ten",
	"b10":                                "big-ten",
	"big-ten":                            "big-ten",
	"big 12 conference":                  "big-12",
	"b12":                                "big-12",
	"big 12":                             "big-12",
	"big-12":                             "big-12",
	"atlantic coast conference":          "acc",
	"acc":                                "acc",
	"southeastern conference":            "sec",
	"sec":                                "sec",
	"big east conference":                "big-east",
	"be":                                 "big-east",
	"big east":                           "big-east",
	"big-east":                           "big-east",
	"pacific-12 conference":              "pac-12",
	"pac 12":                             "pac-12",
	"p12":                                "pac-12",
	"pac-12":                             "pac-12",
	"pacific-10 conference":              "pac-10",
	"pac 10":                             "pac-10",
	"pac-10":                             "pac-10",
	"p10":                                "pac-10",
	"american athletic conference":       "aac",
	"amer":                               "aac",
	"aac":                                "aac",
	"west coast conference":              "wcc",
	"wcc":                                "wcc",
	"great west conference":              "great-west",
	"great-west":                         "great-west",
	"gwc":                                "great-west",
	"ind":                                "ind",
}
