package model

type NPCKind uint8

const (
	NPCShopkeeper NPCKind = iota
	NPCMayor
	NPCFisherman
)

type NPCDef struct {
	Name      string
	Title     string
	Greeting  string // said instead of a dialogue line by shop NPCs
	Dialogues []string
	Shop      bool
}

var npcDefs = [...]NPCDef{
	NPCShopkeeper: {
		Name:     "shopkeeper",
		Title:    "Shopkeeper",
		Greeting: "Hello! What can I do for you today?",
		Dialogues: []string{
			"Welcome to my shop!",
			"Need some seeds?",
			"Fresh supplies daily!",
			"How's the farm going?",
		},
		Shop: true,
	},
	NPCMayor: {
		Name:  "mayor",
		Title: "Mayor",
		Dialogues: []string{
			"Welcome to our village!",
			"The harvest festival is coming!",
			"Keep up the good work!",
			"We're proud of our farmers!",
		},
	},
	NPCFisherman: {
		Name:  "fisherman",
		Title: "Fisherman",
		Dialogues: []string{
			"The fish are biting today!",
			"Have you tried fishing?",
			"I caught a big one yesterday!",
			"The lake is beautiful this time of year.",
		},
	},
}

func (k NPCKind) Valid() bool { return int(k) < len(npcDefs) }

func (k NPCKind) Def() NPCDef {
	if !k.Valid() {
		return NPCDef{}
	}
	return npcDefs[k]
}

func (k NPCKind) String() string { return k.Def().Name }

func ParseNPCKind(s string) (NPCKind, bool) {
	for i, d := range npcDefs {
		if d.Name == s {
			return NPCKind(i), true
		}
	}
	return 0, false
}
