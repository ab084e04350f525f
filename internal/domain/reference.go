package domain

// SlotCount is the number of face-down slots shown during card picking.
const SlotCount = 22

// CatalogMajorArcana is the ID of the built-in catalog.
const CatalogMajorArcana = "major_arcana"

var categories = []CategoryInfo{
	{
		ID:            CategoryTarot,
		Title:         "Destiny Arcana",
		TitleRU:       "Арканы Судьбы",
		Description:   "Analysis of the future and hidden paths. Clarifying situations, finding answers and success vectors via 78 cards.",
		DescriptionRU: "Анализ будущего и скрытых путей. Прояснение ситуации, поиск ответов и векторов личного успеха через 78 карт.",
		HasStyles:     true,
		PromptStyle:   "classic tarot card art, rich symbolism, ornate gold borders",
	},
	{
		ID:            CategoryHex,
		Title:         "Shadow Transit",
		TitleRU:       "Теневой Транзит",
		Description:   "Negative removal and powerful protection. Cleansing from external influence and restoring karmic justice.",
		DescriptionRU: "Снятие негатива и мощная защита. Очищение от чужеродного влияния и восстановление кармической справедливости.",
		PromptStyle:   "dark occult engraving, protective sigils, smoke and embers",
	},
	{
		ID:            CategoryLove,
		Title:         "Aphrodite's Bonds",
		TitleRU:       "Узы Афродиты",
		Description:   "Rituals of attraction and passion. Enhancing personal magnetism, harmonizing relations and creating unbreakable bonds.",
		DescriptionRU: "Ритуалы притяжения и страсти. Усиление личного магнетизма, гармонизация отношений и создание неразрывных связей.",
		PromptStyle:   "romantic art nouveau, intertwined roses, crimson and rose gold",
	},
	{
		ID:            CategoryDivination,
		Title:         "Ethereal Whispers",
		TitleRU:       "Эфирный Шепот",
		Description:   "Direct answers from higher spheres. Precise future divination through mirrors of time and guidance from spiritual mentors.",
		DescriptionRU: "Прямые ответы от высших сфер. Точное прорицание будущего через зеркала времени и советы духовных наставников.",
		PromptStyle:   "celestial astral painting, mirrors of time, violet nebulae",
	},
}

var readingTypes = []ReadingType{
	{ID: "t1", Category: CategoryTarot, Title: "Solar Transit", TitleRU: "Солярный Транзит", Count: 1, Description: "Current incarnation energy.", DescriptionRU: "Энергия текущего воплощения."},
	{ID: "t2", Category: CategoryTarot, Title: "Syzygy of Time", TitleRU: "Сизигия Времени", Count: 3, Description: "Interweaving of past and future.", DescriptionRU: "Переплетение прошлого и грядущего."},
	{ID: "t3", Category: CategoryTarot, Title: "Grand Quintile", TitleRU: "Великий Квинтиль", Count: 5, Description: "Fundamental destiny analysis.", DescriptionRU: "Фундаментальный анализ судьбы."},

	{ID: "h1", Category: CategoryHex, Title: "Crown of Celibacy", TitleRU: "Венец Безбрачия", Count: 1, Description: "Solitude node analysis.", DescriptionRU: "Анализ узла одиночества."},
	{ID: "h2", Category: CategoryHex, Title: "Black Seal", TitleRU: "Черная Печать", Count: 3, Description: "Blocking hostile intentions.", DescriptionRU: "Блокировка враждебных намерений."},
	{ID: "h3", Category: CategoryHex, Title: "Ritual of Oblivion", TitleRU: "Ритуал Забвения", Count: 4, Description: "Removal from reality tissue.", DescriptionRU: "Удаление из ткани реальности."},

	{ID: "l1", Category: CategoryLove, Title: "Blood Binding", TitleRU: "Кровная Привязка", Count: 1, Description: "Awakening animal passion.", DescriptionRU: "Пробуждение животной страсти."},
	{ID: "l2", Category: CategoryLove, Title: "Egillet", TitleRU: "Егильет", Count: 3, Description: "Energy lock for fidelity.", DescriptionRU: "Энергетический замок на верность."},
	{ID: "l3", Category: CategoryLove, Title: "Black Wedding", TitleRU: "Черное Венчание", Count: 5, Description: "Posthumous soul union.", DescriptionRU: "Посмертный союз душ."},

	{ID: "d1", Category: CategoryDivination, Title: "Voice of the Void", TitleRU: "Глас Бездны", Count: 1, Description: "Fate's categorical answer.", DescriptionRU: "Безапелляционный ответ судьбы."},
	{ID: "d2", Category: CategoryDivination, Title: "Oracle of Elements", TitleRU: "Оракул Стихий", Count: 3, Description: "Wisdom of the four beginnings.", DescriptionRU: "Мудрость четырех начал."},
	{ID: "d3", Category: CategoryDivination, Title: "Wheel of Samsara", TitleRU: "Колесо Сансары", Count: 4, Description: "Yearly cyclic forecast.", DescriptionRU: "Циклический прогноз года."},
}

var deckStyles = []DeckStyle{
	{
		ID:          "VISCONTI",
		Title:       "Visconti-Sforza",
		TitleRU:     "Висконти — Сфорца",
		Description: "Golden Renaissance and Milanese luxury. The most ancient and aristocratic deck.",
		PromptStyle: "15th century Italian Renaissance, gold leaf, tempera",
	},
	{
		ID:          "MARSEILLE",
		Title:       "Tarot of Marseilles",
		TitleRU:     "Марсельское Таро",
		Description: "Primal symbolism of folk engraving. The straightforward power of the collective unconscious.",
		PromptStyle: "17th century woodcut print, bold primary colors, aged paper",
	},
	{
		ID:          "PAPUS",
		Title:       "Papus Tarot",
		TitleRU:     "Таро Папюса",
		Description: "Hermetic keys of Egypt. The magician's path through the secrets of the Sephirot.",
		PromptStyle: "late 19th century occult etching, mystical sigils, cosmic dark background",
	},
}

// Categories returns the ritual categories in display order.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categories))
	copy(out, categories)
	return out
}

// CategoryByID looks up a category by its identifier.
func CategoryByID(id Category) (CategoryInfo, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return CategoryInfo{}, false
}

// ReadingTypesFor returns the reading types offered for a category.
func ReadingTypesFor(cat Category) []ReadingType {
	var out []ReadingType
	for _, rt := range readingTypes {
		if rt.Category == cat {
			out = append(out, rt)
		}
	}
	return out
}

// ReadingTypeByID looks up a reading type, scoped to a category.
func ReadingTypeByID(cat Category, id string) (ReadingType, bool) {
	for _, rt := range readingTypes {
		if rt.Category == cat && rt.ID == id {
			return rt, true
		}
	}
	return ReadingType{}, false
}

// DeckStyles returns the selectable deck styles.
func DeckStyles() []DeckStyle {
	out := make([]DeckStyle, len(deckStyles))
	copy(out, deckStyles)
	return out
}

// DeckStyleByID looks up a deck style by its identifier.
func DeckStyleByID(id string) (DeckStyle, bool) {
	for _, s := range deckStyles {
		if s.ID == id {
			return s, true
		}
	}
	return DeckStyle{}, false
}
