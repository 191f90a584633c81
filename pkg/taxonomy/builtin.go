package taxonomy

// builtinSkills 内置技能词表：规范名 -> 书写变体
// 规范名保留约定俗成的大小写（缩写全大写，产品名按官方写法）
// 两个字母的SAP模块名（MM/SD等）只收带SAP前缀的形式，避免撞上日期等普通词
var builtinSkills = map[string][]string{
	// 云与基础设施
	"AWS":        {"amazon web services"},
	"Azure":      {"microsoft azure"},
	"GCP":        {"google cloud", "google cloud platform"},
	"Docker":     {},
	"Kubernetes": {"k8s"},
	"Helm":       {},
	"Terraform":  {},
	"Ansible":    {},
	"Jenkins":    {},
	"Git":        {},
	"GitLab":     {},
	"Linux":      {},
	"Windows":    {},
	"macOS":      {"mac os"},
	"Bash":       {},
	"Shell":      {"shell scripting", "shell script"},
	"PowerShell": {},

	// 编程语言
	"Python":     {"python3", "python 3"},
	"Java":       {},
	"JavaScript": {"js", "java script"},
	"TypeScript": {"ts"},
	"Go":         {"golang"},
	"Ruby":       {},
	"PHP":        {},
	"C":          {},
	"C++":        {"cpp"},
	"C#":         {"csharp", "c sharp"},

	// 前端
	"React":     {"react.js", "reactjs"},
	"Angular":   {"angular.js", "angularjs"},
	"Vue":       {"vue.js", "vuejs"},
	"Next.js":   {"nextjs", "next js"},
	"Nuxt":      {"nuxt.js"},
	"Redux":     {},
	"Node.js":   {"node", "nodejs", "node js"},
	"HTML":      {"html5"},
	"CSS":       {"css3"},
	"Sass":      {"scss"},
	"Less":      {},
	"Bootstrap": {},

	// 数据库与数据处理
	"SQL":           {},
	"MySQL":         {},
	"PostgreSQL":    {"postgres", "psql"},
	"Oracle":        {},
	"MongoDB":       {"mongo"},
	"Redis":         {},
	"Elasticsearch": {"elastic search"},
	"Hive":          {},
	"Spark":         {"apache spark"},
	"Hadoop":        {},
	"PySpark":       {},
	"Kafka":         {"apache kafka"},

	// 测试
	"Selenium":   {},
	"Pytest":     {},
	"JUnit":      {},
	"TestNG":     {},
	"Cypress":    {},
	"Playwright": {},
	"JMeter":     {},
	"Mockito":    {},

	// 接口与架构
	"REST":          {"rest api", "restful", "restful api", "rest apis"},
	"GraphQL":       {},
	"SOAP":          {},
	"Microservices": {"micro services", "micro-services", "microservice"},
	"CI/CD":         {"cicd", "ci cd", "ci/cd pipelines"},
	"API":           {"apis"},

	// 机器学习与数据科学
	"Pandas":       {},
	"NumPy":        {},
	"scikit-learn": {"sklearn", "scikit learn"},
	"TensorFlow":   {},
	"PyTorch":      {},
	"NLP":          {"natural language processing"},
	"EDA":          {"exploratory data analysis"},

	// Java生态
	"Spring":      {},
	"Spring Boot": {"springboot", "spring-boot"},
	"Hibernate":   {},
	"Maven":       {},
	"Gradle":      {},

	// SAP
	"SAP":      {},
	"ABAP":     {},
	"HANA":     {"sap hana"},
	"S/4HANA":  {"s4hana", "s/4 hana"},
	"SAP FICO": {"fico"},
	"SAP MM":   {},
	"SAP SD":   {},

	// 可观测与协作工具
	"Kibana":     {},
	"Logstash":   {},
	"Grafana":    {},
	"Prometheus": {},
	"Splunk":     {},
	"Jira":       {},
	"Confluence": {},
	"Tableau":    {},
	"Power BI":   {"powerbi"},
}
