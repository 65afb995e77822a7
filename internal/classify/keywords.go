// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

// keywordGroup maps one subject category to its indicator terms, English
// and Chinese. Order matters: ties between categories resolve to the
// earlier group.
type keywordGroup struct {
	category string
	keywords []string
}

var keywordGroups = []keywordGroup{
	{"Computer Science", []string{
		"computer", "algorithm", "software", "programming", "machine learning",
		"artificial intelligence", "data", "network", "computing",
		"計算機", "算法", "軟件", "軟體", "程序", "機器學習", "人工智能", "人工智慧",
		"數據", "資料", "網絡", "網路", "計算",
	}},
	{"Mathematics", []string{
		"theorem", "proof", "equation", "mathematical", "algebra", "geometry",
		"calculus", "topology", "number theory",
		"定理", "證明", "方程", "數學", "代數", "幾何", "微積分", "拓撲", "數論",
	}},
	{"Physics", []string{
		"quantum", "particle", "energy", "force", "relativity", "mechanics",
		"thermodynamics", "electromagnetic",
		"量子", "粒子", "能量", "力", "相對論", "力學", "熱力學", "電磁",
	}},
	{"Chemistry", []string{
		"chemical", "molecule", "reaction", "compound", "synthesis", "catalyst",
		"organic", "inorganic",
		"化學", "分子", "反應", "化合物", "合成", "催化劑", "有機", "無機",
	}},
	{"Biology", []string{
		"cell", "gene", "protein", "organism", "evolution", "ecology", "species",
		"molecular biology",
		"細胞", "基因", "蛋白質", "生物", "進化", "演化", "生態", "物種", "分子生物學",
	}},
	{"Medicine", []string{
		"clinical", "patient", "disease", "treatment", "diagnosis", "therapy",
		"medical", "health",
		"臨床", "病人", "患者", "疾病", "治療", "診斷", "醫學", "健康", "醫療",
	}},
	{"Engineering", []string{
		"design", "system", "control", "optimization", "manufacturing",
		"mechanical", "electrical", "civil",
		"設計", "系統", "控制", "優化", "製造", "機械", "電氣", "電機", "土木", "工程",
	}},
	{"Social Sciences", []string{
		"social", "society", "culture", "behavior", "community", "policy",
		"社會", "文化", "行為", "社區", "政策", "社會學",
	}},
	{"Economics", []string{
		"economic", "market", "trade", "finance", "investment", "monetary", "fiscal",
		"經濟", "市場", "貿易", "金融", "投資", "貨幣", "財政",
	}},
	{"Psychology", []string{
		"psychological", "cognitive", "behavior", "mental", "perception", "emotion",
		"心理", "認知", "行為", "精神", "感知", "情緒", "心理學",
	}},
	{"Education", []string{
		"teaching", "learning", "student", "pedagogy", "curriculum", "educational",
		"教學", "學習", "學生", "教育", "課程", "教學法",
	}},
	{"Literature", []string{
		"literary", "novel", "poetry", "narrative", "author", "text analysis",
		"文學", "小說", "詩歌", "詩詞", "敘事", "作者", "文本分析",
	}},
	{"History", []string{
		"historical", "century", "period", "ancient", "medieval", "war", "civilization",
		"歷史", "世紀", "時期", "古代", "中世紀", "戰爭", "文明",
	}},
	{"Philosophy", []string{
		"philosophical", "ethics", "metaphysics", "epistemology", "logic", "moral",
		"哲學", "倫理", "形而上學", "認識論", "邏輯", "道德",
	}},
	{"Law", []string{
		"legal", "court", "justice", "law", "regulation", "statute", "judicial",
		"法律", "法院", "正義", "司法", "法規", "條例", "法學",
	}},
	{"Business", []string{
		"business", "management", "strategy", "marketing", "organization", "corporate",
		"商業", "管理", "策略", "營銷", "行銷", "組織", "企業",
	}},
	{"Environmental Science", []string{
		"environment", "climate", "ecology", "pollution", "sustainability", "conservation",
		"環境", "氣候", "生態", "污染", "可持續", "永續", "保護", "環保",
	}},
}
